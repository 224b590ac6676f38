//go:build cgo

package main

// registers the "sqlite3" driver for --sqlite-driver sqlite3
import _ "github.com/mattn/go-sqlite3"
