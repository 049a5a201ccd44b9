package utils

// Index is a list of row or node indices, used to subset matrices and to
// name the local nodes lying on an element face
type Index []int
