// Package main provides the entry point of dgsettings. It serves the settings
// menus of the Delta Green game system over HTTP. Every menu is a form
// generated from a declared schema; submitted values are type checked and
// written one by one to the configured store.
package main
