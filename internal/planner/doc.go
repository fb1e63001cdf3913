// Package planner turns a size budget and source metadata into an encode
// plan: the video bitrate that fills the budget, an optional downscale
// target, and the pass strategy.
//
// All functions here are pure; the package does no I/O. The ffmpeg package
// consumes the resulting EncodePlan to build command arguments, and the
// pipeline package drives the passes.
package planner
