// Package fileregistry loads promptsig Signatures from YAML manifests on
// the filesystem, lazily and with an in-memory cache. Concurrent loads of
// the same name are deduplicated.
package fileregistry
