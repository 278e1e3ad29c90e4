package types

// Version is the cardstack version, overwritten at build time via ldflags
var Version = "dev"
