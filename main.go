// SPDX-License-Identifier: MPL-2.0

package main

import cmd "chore-cli/cmd/chore"

func main() {
	cmd.Execute()
}
