/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Command dxpred checks implications between predicates.
//
//	dxpred implies "(x >= 3) && (x <= 5)" "x > 2"
//	dxpred fits "x > 3" "x > 2"
//	dxpred domain "(x < 6) || (x >= 7)" x
//	dxpred args "(a > 1) && ready"
//	dxpred simplify "!!(x > 2) && (1 < 2)"
//	dxpred batch suite.yaml -o json
//	dxpred serve --addr :8080
//
// Settings come from DXPRED_* environment variables, optionally loaded from
// a .env file, and can be overridden with flags.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
