package generator

var UniqueName = uniqueName
