package utils

// MACHEPS is the float64 unit roundoff used for deflation and tie tests
const MACHEPS = 2.220446049250313e-16
