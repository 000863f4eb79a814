// Package binder fills request structs from query strings and JSON bodies.
// Binders plug into handler.Wrap through handler.WithBinders and run in order;
// a binder with nothing to read returns ErrBinderNotApplicable and is skipped.
package binder
