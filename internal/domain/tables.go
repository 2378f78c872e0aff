package domain

var Tables = []interface{}{
	// System
	&SysConfig{},
	// CRM
	&Customer{},
	&Product{},
	&Order{},
}
