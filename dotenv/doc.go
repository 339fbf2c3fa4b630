// Package dotenv parses .env files into a flat name → value mapping and can
// mirror the parsed values into an environment.
//
// Supported syntax: KEY=VALUE lines, '#' comment lines, blank lines,
// double-quoted values with \n \r \t \" \\ escapes, single-quoted values
// taken verbatim, inline comments after quoted values or after " #" in
// unquoted ones, and the tokens true/false/null/empty (optionally in
// parentheses). No multi-line values, no ${VAR} interpolation.
//
// Example:
//
//	p := dotenv.New(dotenv.DefaultOptions())
//	p.Load(".env")
//	debug := dotenv.Env("APP_DEBUG", "false")
package dotenv
