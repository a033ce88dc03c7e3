/*
Package params holds the trial parameter and result tables.

Parameters are named integer settings written by the host between trials and read
continuously by the states. Results are named integer values reset to their defaults
at every trial start, written by the states during the trial and reported during the
inter-trial interval.

Both tables are indexed by typed ids whose order matches the host-side tables; the
short uppercase abbreviations (STIMDUR, REW_DUR, RESP, ...) are the wire names.
Ids are validated by the caller: indexing out of range is a programming error and
panics.
*/
package params
