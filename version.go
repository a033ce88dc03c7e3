package ardufsm

// Version is the controller release, overridden at build time with -ldflags.
var Version = "0.3.0"
