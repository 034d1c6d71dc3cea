// Package services contains the core application services: the bootstrap
// pipeline that populates an empty library, the directory importer it
// drives, the status board observers subscribe to, and the library and
// search services clients consume. Services depend only on the port
// interfaces; adapters are injected at wiring time.
package services
