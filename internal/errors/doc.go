// Package errors provides coded, actionable diagnostics for approuter.
//
// Every diagnostic carries a stable code that maps to a short message, a
// longer explanation and a documentation link:
//   - R001-R099: route table build errors (ambiguous pages, bad segments)
//   - R100-R199: navigation errors (not found, load failures)
//   - C001-C099: configuration errors
//   - P001-P099: preview server protocol errors
//
// # Usage
//
//	table, err := router.Build(files, reg)
//	for _, d := range errors.FromBuild(err) {
//	    fmt.Fprint(os.Stderr, d.Format())
//	}
//	// Output:
//	// ERROR R001: Ambiguous route
//	//
//	//   app/user/index.js
//	//   app/user/page.js
//	//
//	//   user has more than one page file
//	//
//	//   Hint: Keep exactly one of page.js, user.js, index.js or user/user.js
//	//
//	//   Learn more: https://vango.dev/docs/approuter/errors/R001
package errors
