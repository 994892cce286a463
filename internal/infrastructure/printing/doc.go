// Package printing renders lease contracts to PDF.
//
// Two renderers are available:
//   - FPDFRenderer draws the lease directly with gofpdf and needs no
//     external process.
//   - ChromedpRenderer lays the lease out as HTML, including the owner's
//     free-form content, and prints it through headless Chrome.
//
// Both implement the contract application Renderer port; New selects one
// from configuration.
package printing
