// Package ui turns build subprocess lifecycle events into diagnostic log lines.
package ui
