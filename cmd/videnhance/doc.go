// Package main provides the command-line interface for enhancing raw I420
// frame files.
//
// # Overview
//
// videnhance reads raw planar YUV 4:2:0 (I420) frame files, runs each frame
// through an enhancement pipeline and writes the enhanced frames to the
// output directory, printing one report line per file. Every input file gets
// its own pipeline, so files processed in parallel never share stabilizer
// state.
//
// # Usage
//
//	videnhance --width 1280 --height 720 -c enhance.yaml clip.yuv
//	videnhance --width 640 --height 360 --auto --overlay --snapshot -j 4 a.yuv b.yuv.zst
//
// Write the default configuration as a starting point:
//
//	videnhance --save-config enhance.yaml
//
// # Configuration
//
// The YAML file has three sections: enhancement (stage flags and parameters),
// analysis (quality and scene-change thresholds) and logging. Omitted keys
// keep their defaults and out-of-range values are clamped with a warning.
//
// # Exit Codes
//
//   - 0: all files enhanced
//   - 1: a file could not be read, enhanced or written
//   - 2: invalid command line
package main
