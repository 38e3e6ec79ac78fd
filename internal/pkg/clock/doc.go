// Package clock supplies the current time. Code that compares against time
// windows takes a Clocker so tests can pin the instant with Fixed.
package clock
