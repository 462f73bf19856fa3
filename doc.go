// Package main provides the entry point of shortuuid-field.
// It generates prefixed short uuid values, describes and records field
// configurations for migrations, and serves the field api over HTTP.
package main
