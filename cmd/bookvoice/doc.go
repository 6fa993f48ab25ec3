// Command bookvoice narrates markdown documents into audio files using the
// Gemini text-to-speech API.
package main
