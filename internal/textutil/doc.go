// Package textutil sanitizes chapter and video titles for use as file names.
package textutil
