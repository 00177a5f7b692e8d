package catalog

// Built-in Kali tool set, used when no catalog file is configured.
var builtinCategories = []Category{"network", "web", "password", "exploitation", "wireless", "recon"}

var builtinTools = map[Category][]Tool{
	"network": {
		{ID: "nmap", Name: "Nmap", Description: "Network exploration and security auditing"},
		{ID: "netcat", Name: "Netcat", Description: "TCP/UDP connections and network debugging"},
		{ID: "masscan", Name: "Masscan", Description: "Fast port scanner"},
		{ID: "hping3", Name: "Hping3", Description: "Network packet generator and analyzer"},
		{ID: "arp-scan", Name: "ARP-scan", Description: "ARP scanning and fingerprinting"},
		{ID: "tcpdump", Name: "TCPdump", Description: "Network packet analyzer"},
	},
	"web": {
		{ID: "nikto", Name: "Nikto", Description: "Web server scanner"},
		{ID: "dirb", Name: "Dirb", Description: "Web content scanner/directory brute forcer"},
		{ID: "sqlmap", Name: "SQLmap", Description: "Automatic SQL injection tool"},
		{ID: "gobuster", Name: "Gobuster", Description: "Directory/file & DNS busting tool"},
		{ID: "wpscan", Name: "WPScan", Description: "WordPress vulnerability scanner"},
		{ID: "burpsuite", Name: "Burp Suite", Description: "Web application security testing"},
	},
	"password": {
		{ID: "hydra", Name: "Hydra", Description: "Fast network logon cracker"},
		{ID: "john", Name: "John the Ripper", Description: "Password cracker"},
		{ID: "hashcat", Name: "Hashcat", Description: "Advanced password recovery"},
		{ID: "medusa", Name: "Medusa", Description: "Parallel password cracker"},
		{ID: "cewl", Name: "CeWL", Description: "Custom word list generator"},
	},
	"exploitation": {
		{ID: "metasploit", Name: "Metasploit", Description: "Penetration testing framework"},
		{ID: "searchsploit", Name: "SearchSploit", Description: "Exploit database search"},
		{ID: "msfvenom", Name: "MSFvenom", Description: "Payload generator"},
		{ID: "beef", Name: "BeEF", Description: "Browser exploitation framework"},
	},
	"wireless": {
		{ID: "aircrack-ng", Name: "Aircrack-ng", Description: "WiFi security auditing"},
		{ID: "reaver", Name: "Reaver", Description: "WPS brute force attack"},
		{ID: "wifite", Name: "Wifite", Description: "Automated wireless auditor"},
		{ID: "kismet", Name: "Kismet", Description: "Wireless network detector"},
	},
	"recon": {
		{ID: "whois", Name: "Whois", Description: "Domain lookup"},
		{ID: "theHarvester", Name: "theHarvester", Description: "OSINT gathering"},
		{ID: "maltego", Name: "Maltego", Description: "OSINT and forensics"},
		{ID: "recon-ng", Name: "Recon-ng", Description: "Web reconnaissance framework"},
		{ID: "shodan", Name: "Shodan", Description: "Internet-connected device search"},
	},
}

// Builtin returns the default Kali catalog
func Builtin() *Catalog {
	c, err := New(builtinCategories, builtinTools)
	if err != nil {
		// the table above is static
		panic(err)
	}
	return c
}
