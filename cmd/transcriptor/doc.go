// Command transcriptor is the CLI for cataloging, scanning, and organizing
// acquired media files.
package main
