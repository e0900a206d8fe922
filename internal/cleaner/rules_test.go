package cleaner

import "testing"

func TestCleanDescription(t *testing.T) {
	tests := []struct {
		name string
		memo string
		want string
	}{
		{
			name: "misc deposit name",
			memo: "MISC DEPOSIT PAY ID 123456 ORG ID 789 NAME ACME SUPPLY CO",
			want: "ACME SUPPLY CO",
		},
		{
			name: "wire from with routing prefix",
			memo: "FUNDS TRANSFER WIRE FROM 1/GLOBAL IMPORTS Jan 15",
			want: "GLOBAL IMPORTS",
		},
		{
			name: "wire to strips reference",
			memo: "FUNDS TRN OUT CBOL WIRE TO PACIFIC TRADING SA #A1B2C3",
			want: "PACIFIC TRADING",
		},
		{
			name: "incoming wire fee",
			memo: "SERVICE CHARGES INCOMING WIRE FEE 0021",
			want: "INCOMING WIRE FEE",
		},
		{
			name: "wire type in with orig",
			memo: "WIRE TYPE:WIRE IN DATE:240112 TIME:0930 ET TRN:2024 ORIG:NORTHSTAR LOGISTICS ID:000123 SND BK:",
			want: "NORTHSTAR LOGISTICS",
		},
		{
			name: "wire type out without bnf",
			memo: "WIRE TYPE:WIRE OUT DATE:240220",
			want: "Wire Out",
		},
		{
			name: "zelle from with conf",
			memo: "Zelle payment from JANE DOE Conf# 12345",
			want: "JANE DOE",
		},
		{
			name: "zelle from with memo",
			memo: `Zelle payment from CARLOS RUIZ for "rent march"`,
			want: "CARLOS RUIZ",
		},
		{
			name: "zelle to strips bank code",
			memo: "Zelle payment to MARIA LOPEZ Wfctq9x7r2",
			want: "MARIA LOPEZ",
		},
		{
			name: "mobile transfer reorders name",
			memo: "Mobile transfer from CHK 4321 Confirmation# 987654321; Smith, John",
			want: "John Smith",
		},
		{
			name: "online transfer to chk",
			memo: "Online transfer to CHK ...5678 transaction#: 1111",
			want: "Transfer to CHK 5678",
		},
		{
			name: "purchase authorized",
			memo: "Purchase authorized on 01/10 Staples Store 123 Tampa FL S300012345678 Card 9876",
			want: "Staples Store 123 Tampa",
		},
		{
			name: "checkcard",
			memo: "CHECKCARD 0112 DELTA AIR LINES ATLANTA 241234567890123456789",
			want: "DELTA AIR LINES ATLANTA",
		},
		{
			name: "orig co name entry descr",
			memo: "Orig CO Name:Payroll Inc Orig ID:1234 Desc Date: CO Entry Descr:Payroll",
			want: "Payroll",
		},
		{
			name: "orig co name ach descr falls back to name",
			memo: "Orig CO Name:Big Vendor Orig ID:1234 Desc Date: CO Entry Descr:ACH",
			want: "Big Vendor",
		},
		{
			name: "four digit check number",
			memo: "4321",
			want: "Check 4321",
		},
		{
			name: "des prefix",
			memo: "IRS DES:USATAXPYMT ID:123456789",
			want: "IRS",
		},
		{
			name: "overdraft fee",
			memo: "OVERDRAFT ITEM FEE FOR ACTIVITY OF 01-12",
			want: "Overdraft Fee",
		},
		{
			name: "store state code tail",
			memo: "WAL-MART #1234 TAMPA FL 240112345678901",
			want: "WAL-MART #1234 TAMPA",
		},
		{
			name: "alias applied after rules",
			memo: "ATT* BILL PAYMENT",
			want: "AT&T",
		},
		{
			name: "clean name passes through",
			memo: "JANE DOE",
			want: "JANE DOE",
		},
		{
			name: "empty memo unchanged",
			memo: "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CleanDescription(tt.memo)
			if got != tt.want {
				t.Errorf("CleanDescription(%q) = %q, want %q", tt.memo, got, tt.want)
			}
		})
	}
}

func TestCleanDescriptionIdempotent(t *testing.T) {
	memos := []string{
		"Zelle payment from JANE DOE Conf# 12345",
		"4321",
		"FUNDS TRANSFER WIRE FROM ACME LLC Jan 5",
		"Purchase authorized on 01/10 Staples Store 123 Tampa FL S300012345678 Card 9876",
	}
	for _, memo := range memos {
		once := CleanDescription(memo)
		twice := CleanDescription(once)
		if once != twice {
			t.Errorf("CleanDescription not stable for %q: first %q, second %q", memo, once, twice)
		}
	}
}

func TestRuleCleanerBatch(t *testing.T) {
	in := []string{"Zelle payment to BOB Conf# 99", "ACME LLC", "4321"}
	got := NewRuleCleaner().CleanBatch(in)
	if len(got) != len(in) {
		t.Fatalf("batch length = %d, want %d", len(got), len(in))
	}
	want := []string{"BOB", "ACME LLC", "Check 4321"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d = %q, want %q", i, got[i], want[i])
		}
	}
}
