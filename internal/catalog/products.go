package catalog

func bound(v int64) *int64 {
	return &v
}

// builtinProducts is the product table shipped with the client. Parameter
// ids are unique across all products.
//
//nolint:funlen,maintidx // data table
func builtinProducts() []ProductDefinition {
	return []ProductDefinition{
		{
			ID:   1,
			Name: "fortiGateBundle",
			Parameters: []ParameterDefinition{
				{ID: 1, Name: "cpu", Type: TypeInt, Min: bound(1), Max: bound(96), Required: true},
				{ID: 2, Name: "service", Type: TypeString, Choices: []string{"FC", "UTP", "ENT", "ATP"}, Required: true},
				{ID: 10, Name: "vdom", Type: TypeInt, Min: bound(0), Max: bound(500), Required: false, Default: 0},
				{ID: 43, Name: "fortiGuardServices", Type: TypeList, Choices: []string{"FGTAVDB", "FGTFAIS", "FGTISSS", "FGTDLDB", "FGTFGSA", "FGTFCSS"}, Required: false, Default: []string{}},
				{ID: 44, Name: "cloudServices", Type: TypeList, Choices: []string{"FGTFAMS", "FGTSWNM", "FGTSOCA", "FGTFAZC", "FGTSWOS", "FGTFSPA"}, Required: false, Default: []string{}},
				{ID: 45, Name: "supportService", Type: TypeString, Choices: []string{"FGTFCELU"}, Required: false, Default: "NONE"},
			},
		},
		{
			ID:   2,
			Name: "fortiManager",
			Parameters: []ParameterDefinition{
				{ID: 30, Name: "device", Type: TypeInt, Min: bound(1), Max: bound(100000), Required: true},
				{ID: 9, Name: "adom", Type: TypeInt, Min: bound(1), Max: bound(100000), Required: true},
			},
		},
		{
			ID:   3,
			Name: "fortiWeb",
			Parameters: []ParameterDefinition{
				{ID: 4, Name: "cpu", Type: TypeString, Choices: []string{"1", "2", "4", "8", "16"}, Required: true},
				{ID: 5, Name: "service", Type: TypeString, Choices: []string{"FWBSTD", "FWBADV"}, Required: true},
			},
		},
		{
			ID:   4,
			Name: "fortiGateLCS",
			Parameters: []ParameterDefinition{
				{ID: 6, Name: "cpu", Type: TypeInt, Min: bound(1), Max: bound(96), Required: true},
				{ID: 7, Name: "fortiGuardServices", Type: TypeList, Choices: []string{"IPS", "AVDB", "FGSA", "DLDB", "FAIS", "FURLDNS"}, Required: false, Default: []string{}},
				{ID: 8, Name: "supportService", Type: TypeString, Choices: []string{"FC247", "ASET"}, Required: true},
				{ID: 11, Name: "vdom", Type: TypeInt, Min: bound(1), Max: bound(500), Required: true},
				{ID: 12, Name: "cloudServices", Type: TypeList, Choices: []string{"FAMS", "SWNM", "AFAC", "FAZC"}, Required: false, Default: []string{}},
			},
		},
		{
			ID:   5,
			Name: "fortiClientEMSOP",
			Parameters: []ParameterDefinition{
				{ID: 13, Name: "ZTNA", Type: TypeInt, Min: bound(0), Max: bound(25000), Required: true},
				{ID: 14, Name: "EPP", Type: TypeInt, Min: bound(0), Max: bound(25000), Required: true},
				{ID: 15, Name: "chromebook", Type: TypeInt, Min: bound(0), Max: bound(25000), Required: true},
				{ID: 16, Name: "service", Type: TypeString, Choices: []string{"FCTFC247"}, Required: true},
				{ID: 36, Name: "addons", Type: TypeList, Choices: []string{"BPS"}, Required: false, Default: []string{}},
			},
		},
		{
			ID:   7,
			Name: "fortiAnalyzer",
			Parameters: []ParameterDefinition{
				{ID: 21, Name: "storage", Type: TypeInt, Min: bound(5), Max: bound(8300), Required: true},
				{ID: 22, Name: "adom", Type: TypeInt, Min: bound(0), Max: bound(1200), Required: true},
				{ID: 23, Name: "service", Type: TypeString, Choices: []string{"FAZFC247"}, Required: true},
			},
		},
		{
			ID:   8,
			Name: "fortiPortal",
			Parameters: []ParameterDefinition{
				{ID: 24, Name: "device", Type: TypeInt, Min: bound(0), Max: bound(100000), Required: true},
			},
		},
		{
			ID:   9,
			Name: "fortiADC",
			Parameters: []ParameterDefinition{
				{ID: 25, Name: "cpu", Type: TypeString, Choices: []string{"1", "2", "4", "8", "16", "32"}, Required: true},
				{ID: 26, Name: "service", Type: TypeString, Choices: []string{"FDVSTD", "FDVADV", "FDVFC247"}, Required: true},
			},
		},
		{
			ID:   101,
			Name: "fortiGateHardware",
			Parameters: []ParameterDefinition{
				{
					ID:   27,
					Name: "model",
					Type: TypeString,
					Choices: []string{
						"FGT40F", "FGT60F", "FGT70F", "FGT80F", "FG100F", "FGT60E", "FGT61F", "FG100E",
						"FG101F", "FG200E", "FG200F", "FG201F", "FG4H0F", "FG6H0F", "FWF40F", "FWF60F",
						"FGR60F", "FR70FB", "FGT81F", "FG101E", "FG4H1F", "FG1K0F", "FG180F", "F2K60F",
						"FG3K0F", "FG3K1F", "FG3K2F", "FG40FI", "FW40FI", "FWF61F", "FR60FI", "FGT71F",
						"FG80FP", "FG80FB", "FG80FD", "FWF80F", "FW80FS", "FWF81F", "FW81FS", "FW81FD",
						"FW81FP", "FG81FP", "FGT90G", "FGT91G", "FG201E", "FG4H0E", "FG4HBE", "FG4H1E",
						"FD4H1E", "FG6H0E", "FG6H1E", "FG6H1F", "FG9H0G", "FG9H1G", "FG1K1F", "FG181F",
						"FG3K7F", "FG39E6", "FG441F",
					},
					Required: true,
				},
				{ID: 28, Name: "service", Type: TypeString, Choices: []string{"FGHWFC247", "FGHWFCEL", "FGHWATP", "FGHWUTP", "FGHWENT"}, Required: true},
				{
					ID:   29,
					Name: "addons",
					Type: TypeList,
					Choices: []string{
						"FGHWFCELU", "FGHWFAMS", "FGHWFAIS", "FGHWSWNM", "FGHWDLDB", "FGHWFAZC", "FGHWSOCA", "FGHWMGAS",
						"FGHWSPAL", "FGHWFCSS",
					},
					Required: false,
					Default:  []string{},
				},
			},
		},
		{
			ID:   202,
			Name: "fortiCloudPrivate",
			Parameters: []ParameterDefinition{
				{ID: 32, Name: "throughput", Type: TypeInt, Min: bound(10), Max: bound(10000), Required: true},
				{ID: 33, Name: "applications", Type: TypeInt, Min: bound(0), Max: bound(2000), Required: true},
			},
		},
		{
			ID:   203,
			Name: "fortiCloudPublic",
			Parameters: []ParameterDefinition{
				{ID: 34, Name: "throughput", Type: TypeInt, Min: bound(25), Max: bound(10000), Required: true},
				{ID: 35, Name: "applications", Type: TypeInt, Min: bound(0), Max: bound(2000), Required: true},
			},
		},
		{
			ID:   204,
			Name: "fortiClientEMSCloud",
			Parameters: []ParameterDefinition{
				{ID: 37, Name: "ZTNA", Type: TypeInt, Min: bound(0), Max: bound(25000), Required: true},
				{ID: 38, Name: "ZTNA_FGF", Type: TypeInt, Min: bound(0), Max: bound(25000), Required: true},
				{ID: 39, Name: "EPP_ZTNA", Type: TypeInt, Min: bound(0), Max: bound(25000), Required: true},
				{ID: 40, Name: "EPP_ZTNA_FGF", Type: TypeInt, Min: bound(0), Max: bound(25000), Required: true},
				{ID: 41, Name: "chromebook", Type: TypeInt, Min: bound(0), Max: bound(25000), Required: true},
				{ID: 42, Name: "addons", Type: TypeList, Choices: []string{"BPS"}, Required: false, Default: []string{}},
			},
		},
		{
			ID:   205,
			Name: "fortiSASE",
			Parameters: []ParameterDefinition{
				{ID: 48, Name: "users", Type: TypeInt, Min: bound(50), Max: bound(50000), Required: true},
				{ID: 49, Name: "service", Type: TypeString, Choices: []string{"FSASESTD", "FSASEADV"}, Required: true},
				// The API additionally requires a multiple of 25.
				{ID: 50, Name: "bandwidth", Type: TypeInt, Min: bound(25), Max: bound(10000), Required: true},
				{ID: 51, Name: "dedicatedIPs", Type: TypeInt, Min: bound(4), Max: bound(65534), Required: true},
			},
		},
		{
			ID:   206,
			Name: "fortiEDR",
			Parameters: []ParameterDefinition{
				{ID: 46, Name: "service", Type: TypeString, Choices: []string{"FEDRPDR"}, Required: true},
				// Reported by the API, never sent.
				{ID: 47, Name: "endpoints", Type: TypeInt, Required: false, ReadOnly: true},
				{ID: 52, Name: "addons", Type: TypeList, Choices: []string{"FEDRXDR"}, Required: false, Default: []string{}},
			},
		},
	}
}
