// Package services implements the driving port interfaces.
// Services contain the core pipeline - segmentation orchestration,
// embedding caching, similarity ranking, command interpretation and
// action dispatch - and coordinate calls to driven ports (adapters).
package services
