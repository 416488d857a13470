// Package config loads querystate.json, the declaration file read by the
// querystate CLI.
//
// # Configuration File Structure
//
//	{
//	  "fields": [
//	    {"name": "q", "kind": "deferred_string"},
//	    {"name": "page", "kind": "number"},
//	    {"name": "tags", "kind": "string_list"}
//	  ],
//	  "debounce": "600ms",
//	  "server": {
//	    "addr": ":8080",
//	    "wsPath": "/ws",
//	    "metricsPath": "/metrics",
//	    "allowedOrigins": ["https://shop.example"]
//	  }
//	}
//
// Field kinds are the names accepted by querycodec.ParseKind.
package config
