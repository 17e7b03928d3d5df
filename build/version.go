package build

var Version = "v0.1.0"
