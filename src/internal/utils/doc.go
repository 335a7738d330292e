// Package utils holds small helpers shared by the commands.
package utils
