/*
Package config manages configuration parsing and validation for catpack.

	            +-------------+
	            |   Config    |
	            | (Settings)  |
	            +------+------+
	                   |
	      +-----------+-----------+-----------+
	      |                       |           |
	+-----+-----+           +----+----+  +---+----+
	|   YAML    |           |   HCL   |  |  JSON  |
	| Parser    |           | Parser  |  | Parser |
	+-----------+           +---------+  +--------+

🎯 Purpose:
- Loads the allow-pattern set and the three exclusion sources
- Applies defaults so the tool works with zero configuration
- Abstracts away format-specific details behind a parser registry

🔄 Flow:
1. Reads configuration from file (missing file -> defaults)
2. Parses format-specific syntax
3. Normalizes values and applies defaults
4. Hands the validated config to the operation layer

📝 Design Philosophy:
Configuration is gathered once, up front, and passed explicitly into the
exclusion builder and pattern constructors. Nothing deeper in the call chain
reads ambient settings.
*/
package config
