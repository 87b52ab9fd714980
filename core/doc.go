// Package core contains the syndication extension framework and the document
// logic built on it. Nothing in core depends on a storage backend or the CLI.
//
// The core package is organized into several sub-packages:
//
// - extensions: Descriptors, the registry, the adapter and the Host contract
// - extensions/<kind>: One package per namespace extension (geo, sy, app, slash, wfw, creativeCommons, fh, thr)
// - extensions/builtin: Registry of every shipped kind
// - formats: Minimal Atom and RSS hosts that carry extensions
// - syndication: Whole-document load/save and the document service
// - discovery: Feed autodiscovery in HTML pages
// - errors: Custom error types for better error handling
// - interfaces: Contracts for external dependencies (cache, logger)
//
// # Usage Example
//
//	import (
//	    "syndication-kit/core/extensions/builtin"
//	    "syndication-kit/core/interfaces"
//	    "syndication-kit/core/syndication"
//	)
//
//	deps := interfaces.Dependencies{
//	    Cache:  myCache,  // implements interfaces.Cache
//	    Logger: myLogger, // implements interfaces.Logger
//	}
//
//	svc := syndication.NewService(deps, builtin.Settings())
//	doc, err := svc.LoadDocument(ctx, file)
//	id, err := svc.StoreDocument(ctx, "", doc)
package core
