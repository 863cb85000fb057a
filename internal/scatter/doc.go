// Package scatter holds the pure scatterplot math: record extraction from
// delimited rows, data bounds, the linear data-to-pixel scale with its
// vertical flip, axis ticks, tick label formatting and round-robin label
// placement.
//
// Nothing in this package does I/O or keeps state; every function is safe to
// call from anywhere.
package scatter
