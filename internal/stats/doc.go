// Package stats derives progress, streak and goal metrics from date-keyed day
// records. Every function is pure: the record map and the current instant are
// passed in, nothing is read from ambient state.
package stats
