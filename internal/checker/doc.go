// Package checker orchestrates a description-coverage check run.
//
// A run drives the layout lookup loader and the page scanner, classifies
// every discovered page as covered or missing, and assembles the final
// CheckResult. The flow is a single synchronous pass: load the lookup,
// scan the tree, classify, report. There are no retries and no
// intermediate states.
package checker
