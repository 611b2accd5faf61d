//go:build netlib
// +build netlib

package utils

/*
#cgo LDFLAGS: -lopenblas -llapacke -lgfortran -lm -lpthread
#include <cblas.h>
*/
import "C"

import (
	"gonum.org/v1/gonum/blas/blas64"
	netblas "gonum.org/v1/netlib/blas/netlib"
)

// The dense products of the function evaluator and the LAPACK ports behind
// mat.EigenSym and mat.Eigen all dispatch through blas64.
func init() {
	blas64.Use(netblas.Implementation{})
	BLASBackend = "netlib"
}
