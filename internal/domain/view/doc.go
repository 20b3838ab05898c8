// Package view projects the alarm working set into the ordered subset an
// operator looks at.
//
// Project is a pure function of the alarms and a Query (filters plus sort
// key). State is the immutable view state of an operator session; it changes
// only through Reduce, which applies one tagged Action at a time.
package view
