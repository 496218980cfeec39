// Package scan tokenizes the %{...} directive language embedded in
// configuration values.
//
// The scanner is pure: it walks a string from a caller-supplied offset,
// reports the span and kind of the next directive, and never mutates its
// input. All stateful interpretation (substitution, conditionals,
// indirection) lives in pkg/rcstore.
//
// Directive forms:
//
//	%{NAME}     variable substitution
//	%{*NAME}    indirect substitution (prefix + NAME)
//	%{?NAME}    conditional, keep-if-true
//	%{!NAME}    conditional, keep-if-false
//	%{else}     branch separator (name matched case-insensitively)
//	%{}         block terminator
//	%%{         escaped literal opener, never matched as a directive
//
// NAME starts with '*', '_' or an ASCII letter and continues with '_',
// digits or ASCII letters. A marker that violates the charset or is not
// closed by '}' immediately after the name is rejected and the scan
// resumes past it.
package scan
