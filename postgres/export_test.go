package postgres

var BuildCxnStr = buildCxnStr
