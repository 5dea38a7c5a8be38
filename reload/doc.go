// Package reload renders templates at run time instead of through generated
// code.
//
// A [Renderer] reads the template file on every call, compiles it to the
// same render plan the code generator serializes, and interprets the plan.
// Expressions are evaluated with expr-lang, with the data value bound to the
// receiver name (self by default). Literal text and the escaping of
// interpolated values match the generated methods byte for byte.
//
// Reload mode understands the statements templates commonly use: if and
// else chains, the four forms of for (maps range in sorted key order),
// switch with case, default and fallthrough, variable declarations,
// assignments, increments, break and continue. Anything else fails with
// [ErrUnsupported] at the offending line.
package reload
