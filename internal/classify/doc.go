// Package classify implements the script classifier.
//
// Given a script reference and a primary domain, the classifier
// determines the script's category from an ordered rule table and labels
// it first- or third-party by registrable-domain suffix matching.
// Classification is total and deterministic: every reference yields
// exactly one result, with generic/third-party as the universal
// fallback, and the classifier never aborts a run.
package classify
