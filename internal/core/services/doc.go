// Package services implements the driving port interfaces.
// Services validate user input and orchestrate calls to driven
// ports (the document server and the config store).
//
// Services are pure Go with no external dependencies beyond validation.
package services
