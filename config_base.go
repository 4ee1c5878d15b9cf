package main

type SrvConfigBase struct {
	Verbose      bool   `short:"v" long:"verbose" description:"log verbose"`
	Quiet        bool   `short:"q" long:"quiet" description:"log quiet"`
	Addr         string `short:"l" long:"listen" default:"localhost:8080" value-name:"[host]:port"`
	Proto        string `long:"protocol" default:"tcp" value-name:"tcp/unix"`
	JSONLog      bool   `long:"json-log"`
	H2C          bool   `long:"h2c" description:"accept HTTP/2 without TLS"`
	Version      bool   `short:"V" long:"version"`
	OtelProvider string `long:"opentelemetry" choice:"stdout" choice:"jaeger" choice:"zipkin" choice:"otlp" choice:"otlp-http"`
	PluginInfo   string `long:"plugin-info" value-name:"plugin-binary" description:"print the manifest of a plugin binary and exit"`
}
