// Package catalog provides window presets for the dashboard's content kinds.
//
// A preset gives the title and initial geometry used when a dashboard card
// opens its view as a floating window. Built-in presets cover every content
// kind; deployments can override them with YAML, TOML, or JSON files.
//
// File Format:
//
//	presets:
//	  - kind: alerts
//	    title: Live Alerts
//	    x: 80
//	    y: 80
//	    width: 640
//	    height: 420
//
// TOML files use [[presets]] tables with the same keys; JSON files use the
// same structure as YAML.
package catalog
