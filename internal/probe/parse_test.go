package probe

import "testing"

func TestLine(t *testing.T) {
	tests := []struct {
		name    string
		n       int
		out     string
		want    string
		wantErr bool
	}{
		{"crlf second line", 1, "Name\r\nAMD Ryzen 7 5800X  \r\n\r\n", "AMD Ryzen 7 5800X", false},
		{"lf first line", 0, "  64\n", "64", false},
		{"too few lines", 2, "Size\r\n1\r\n", "", true},
		{"blank line", 1, "Size\r\n   \r\n", "", true},
		{"empty output", 0, "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Line(tt.n)(tt.out)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Line(%d) error = %v, wantErr %v", tt.n, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Line(%d) = %q, want %q", tt.n, got, tt.want)
			}
		})
	}
}

func TestKeyValue(t *testing.T) {
	out := "Architecture:            x86_64\nModel name:              Intel(R) Xeon(R) CPU @ 2.20GHz\nThread(s) per core:      2\n"

	got, err := KeyValue("Model name:")(out)
	if err != nil {
		t.Fatalf("KeyValue() error = %v", err)
	}
	if got != "Intel(R) Xeon(R) CPU @ 2.20GHz" {
		t.Errorf("KeyValue() = %q", got)
	}

	if _, err := KeyValue("Vendor ID:")(out); err == nil {
		t.Error("KeyValue() with missing key should fail")
	}
}

func TestFreeOutput(t *testing.T) {
	out := "               total        used        free      shared  buff/cache   available\n" +
		"Mem:     16679649280  5821779968  1546027008   682950656  9311842304  9842118656\n" +
		"Swap:     2147479552           0  2147479552\n"

	parse := Then(Then(Line(1), Field(1)), RoundedGiBFromBytes)
	got, err := parse(out)
	if err != nil {
		t.Fatalf("parse error = %v", err)
	}
	if got != 16 {
		t.Errorf("RAM = %d GiB, want 16", got)
	}
}

func TestDfKiBOutput(t *testing.T) {
	out := "Filesystem     1024-blocks      Used Available Capacity  Mounted on\n" +
		"/dev/disk3s1s1   254912512  10721232 131072000     8%    /\n"

	free, err := Then(Then(Line(1), Field(3)), GiBFromKiB)(out)
	if err != nil {
		t.Fatalf("parse error = %v", err)
	}
	if free != 125 {
		t.Errorf("free = %v GiB, want 125", free)
	}
}

func TestField(t *testing.T) {
	if _, err := Field(5)("a b c"); err == nil {
		t.Error("Field(5) on three fields should fail")
	}
	got, err := Field(2)("a  b\tc")
	if err != nil || got != "c" {
		t.Errorf("Field(2) = %q, %v; want c", got, err)
	}
}

func TestInt(t *testing.T) {
	if n, err := Int(" 32 "); err != nil || n != 32 {
		t.Errorf("Int(32) = %d, %v", n, err)
	}
	if _, err := Int("32GB"); err == nil {
		t.Error("Int(32GB) should fail")
	}
	if _, err := Uint("-1"); err == nil {
		t.Error("Uint(-1) should fail")
	}
}

func TestAddress(t *testing.T) {
	tests := []struct {
		name    string
		v6      bool
		out     string
		want    string
		wantErr bool
	}{
		{"hostname -I ipv4", false, "192.168.1.20 172.17.0.1 2001:db8::20 \n", "192.168.1.20", false},
		{"hostname -I ipv6", true, "192.168.1.20 fe80::1 2001:db8::20 \n", "2001:db8::20", false},
		{"ifconfig inet6", true, "en0: flags=8863<UP>\n\tinet6 fe80::1c2b%en0 prefixlen 64\n\tinet6 2001:db8::5/64\n", "2001:db8::5", false},
		{"ifconfig addr prefix", false, "inet addr:10.0.0.2  Bcast:10.0.0.255", "10.0.0.2", false},
		{"skips loopback", false, "inet 127.0.0.1 netmask 0xff000000\ninet 10.1.2.3", "10.1.2.3", false},
		{"no ipv6", true, "192.168.1.20", "", true},
		{"no address", false, "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Address(tt.v6)(tt.out)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Address() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Address() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDefaultTableEnvKeys(t *testing.T) {
	table := DefaultTable()
	if table.Platform == "" {
		t.Error("DefaultTable() has no platform name")
	}
	if table.Env.LogicalProcessors == "" || table.Env.Username == "" || table.Env.Hostname == "" {
		t.Errorf("DefaultTable() env keys incomplete: %+v", table.Env)
	}
}
