// Package dom is a small headless element tree for terminal user interfaces.
//
// It models the parts of a browser document that interactive widgets lean on:
// attributes, element and document level event listeners, keyboard focus,
// mutation observation and deferred timers. Nothing in this package draws;
// a host (see package tui) feeds it input events and renders the tree.
//
// # Task model
//
// All work is single threaded. Each dispatched event and each fired timer is
// one task. Attribute mutations queue records on the observers watching them;
// the records are delivered by [Document.Flush], which every task runs when
// it finishes. Observer callbacks therefore always run after the write that
// caused them and before the next task.
//
// # Listener lifetime
//
// AddEventListener returns a *Registration. Keep it and call Remove when the
// listener is no longer wanted; Remove may be called more than once.
package dom
