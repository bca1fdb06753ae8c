/* Test frame generator - see GenTonesMain for details */
package main

import (
	ft8 "github.com/doismellburning/basenji/src"
)

func main() {
	ft8.GenTonesMain()
}
