package main

// SrvConfig is configuration. set by argument parser
type SrvConfig struct {
	SrvConfigBase
	Mounts      []string `long:"mount" value-name:"host[:guest][:ro]" description:"preopen a host directory, first one is used by /read-file"`
	MaxFileSize int64    `long:"max-file-size" default:"1048576" value-name:"bytes" description:"largest file /read-file will load"`
}
