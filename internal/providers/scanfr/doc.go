// Package scanfr implements the ScanFR (www.scan-fr.co) source. Request
// builders and parsers are pure; Client glues them to an *http.Client.
package scanfr
