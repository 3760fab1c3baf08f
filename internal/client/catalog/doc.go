// Package catalog provides a thin client for the remote catalog service.
// The catalog owns search and ranking; this client only resolves a known
// track ID into a descriptor carrying audio, cover and lyric locators.
package catalog
