package executor

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"runtime"
	"strings"
	"time"
)

// outputFunc renders the canned output of one tool
type outputFunc func(req Request, rng *rand.Rand, now time.Time) string

var cannedOutputs = map[string]outputFunc{
	"nmap":         nmapOutput,
	"nikto":        niktoOutput,
	"sqlmap":       sqlmapOutput,
	"hydra":        hydraOutput,
	"dirb":         dirbOutput,
	"john":         johnOutput,
	"netcat":       netcatOutput,
	"whois":        whoisOutput,
	"theHarvester": harvesterOutput,
}

func renderOutput(req Request, rng *rand.Rand, now time.Time) string {
	if fn, ok := cannedOutputs[req.ToolID]; ok {
		return fn(req, rng, now)
	}
	return defaultOutput(req)
}

func between(rng *rand.Rand, lo, hi int) int {
	return lo + rng.Intn(hi-lo+1)
}

func nmapOutput(req Request, rng *rand.Rand, _ time.Time) string {
	return fmt.Sprintf(`Starting Nmap 7.94 ( https://nmap.org )
Nmap scan report for %s
Host is up (0.00042s latency).
PORT     STATE SERVICE     VERSION
22/tcp   open  ssh         OpenSSH 8.9p1
80/tcp   open  http        Apache httpd 2.4.52
443/tcp  open  ssl/http    Apache httpd 2.4.52
3306/tcp open  mysql       MySQL 8.0.33

Nmap done: 1 IP address (1 host up) scanned in %.2f seconds`,
		req.Param("target", "192.168.1.1"),
		2.5+rng.Float64()*2.5,
	)
}

func niktoOutput(req Request, rng *rand.Rand, now time.Time) string {
	stamp := now.Format("2006-01-02 15:04:05")
	rule := strings.Repeat("-", 75)
	return fmt.Sprintf(`- Nikto v2.5.0
%[1]s
+ Target IP:          %[2]s
+ Target Hostname:    %[3]s
+ Target Port:        %[4]s
+ Start Time:         %[5]s
%[1]s
+ Server: Apache/2.4.52 (Ubuntu)
+ /: The anti-clickjacking X-Frame-Options header is not present.
+ /: The X-Content-Type-Options header is not set.
+ /admin/: Directory indexing found.
+ OSVDB-3092: /admin/: This might be interesting.
+ OSVDB-3268: /icons/: Directory indexing found.
+ %[6]d item(s) reported on remote host
+ End Time:           %[5]s
%[1]s`,
		rule,
		req.Param("target", "192.168.1.1"),
		req.Param("target", "target.local"),
		req.Param("port", "80"),
		stamp,
		between(rng, 5, 15),
	)
}

func sqlmapOutput(req Request, _ *rand.Rand, now time.Time) string {
	target := req.Param("target", "parameter")
	clock := now.Format("15:04:05")
	return fmt.Sprintf(`[*] starting @ %[1]s
[INFO] testing connection to the target URL
[INFO] checking if the target is protected by WAF/IPS
[INFO] testing if the target URL content is stable
[INFO] target URL content is stable
[INFO] testing 'AND boolean-based blind - WHERE or HAVING clause'
[INFO] %[2]s appears to be 'AND boolean-based blind' injectable
[INFO] testing 'MySQL >= 5.0.12 AND time-based blind'
[INFO] %[2]s appears to be 'MySQL >= 5.0.12 AND time-based blind' injectable
[INFO] the back-end DBMS is MySQL
web server operating system: Linux Ubuntu
web application technology: Apache 2.4.52, PHP 8.1.2
back-end DBMS: MySQL >= 5.0.12
[*] ending @ %[1]s`, clock, target)
}

func hydraOutput(req Request, rng *rand.Rand, _ time.Time) string {
	target := req.Param("target", "192.168.1.1")
	port := req.Param("port", "22")
	service := req.Param("service", "ssh")
	return fmt.Sprintf(`Hydra v9.4 (c) 2022 by van Hauser/THC
[DATA] max 16 tasks per 1 server, overall 16 tasks, %[1]s login tries
[DATA] attacking %[2]s://%[3]s:%[4]s/
[STATUS] %[5]d.00 tries/min, %[6]d tries in 00:0%[7]dh
[%[4]s][%[2]s] host: %[3]s login: admin password: %[8]s
1 of 1 target successfully completed, 1 valid password found`,
		req.Param("wordlist_size", "14344"),
		service,
		target,
		port,
		between(rng, 100, 500),
		between(rng, 1000, 5000),
		between(rng, 1, 5),
		req.Param("found_pass", "admin123"),
	)
}

func dirbOutput(req Request, _ *rand.Rand, now time.Time) string {
	target := req.Param("target", "192.168.1.1")
	stamp := now.Format(time.ANSIC)
	return fmt.Sprintf(`-----------------
DIRB v2.22
By The Dark Raver
-----------------
START_TIME: %[2]s
URL_BASE: http://%[1]s/
WORDLIST_FILES: /usr/share/dirb/wordlists/common.txt
-----------------
GENERATED WORDS: 4612

---- Scanning URL: http://%[1]s/ ----
+ http://%[1]s/admin (CODE:301|SIZE:315)
+ http://%[1]s/backup (CODE:403|SIZE:277)
+ http://%[1]s/config (CODE:403|SIZE:277)
+ http://%[1]s/images (CODE:301|SIZE:315)
+ http://%[1]s/index.php (CODE:200|SIZE:4521)
-----------------
END_TIME: %[2]s
DOWNLOADED: 4612 - FOUND: 5`, target, stamp)
}

func johnOutput(_ Request, rng *rand.Rand, _ time.Time) string {
	return fmt.Sprintf(`Using default input encoding: UTF-8
Loaded %d password hashes with %d different salts
Will run %d OpenMP threads
Press 'q' or Ctrl-C to abort, almost any other key for status
admin123         (admin)
password         (user1)
%dg 0:00:00:%d DONE
Session completed`,
		between(rng, 1, 10),
		between(rng, 1, 5),
		runtime.NumCPU(),
		between(rng, 1, 3),
		between(rng, 10, 59),
	)
}

func netcatOutput(req Request, _ *rand.Rand, _ time.Time) string {
	return fmt.Sprintf(`Connection to %s %s port [tcp/*] succeeded!
HTTP/1.1 200 OK
Server: Apache/2.4.52
Content-Type: text/html`,
		req.Param("target", "192.168.1.1"),
		req.Param("port", "80"),
	)
}

func whoisOutput(req Request, _ *rand.Rand, _ time.Time) string {
	return fmt.Sprintf(`Domain Name: %s
Registry Domain ID: 123456789_DOMAIN_COM-VRSN
Registrar: Example Registrar, Inc.
Creation Date: 2020-01-15T00:00:00Z
Registry Expiry Date: 2025-01-15T00:00:00Z
Registrar IANA ID: 12345
Name Server: NS1.EXAMPLE.COM
Name Server: NS2.EXAMPLE.COM
DNSSEC: unsigned`, req.Param("target", "example.com"))
}

const harvesterBanner = `*******************************************************************
*  _   _                                            _             *
* | |_| |__   ___    /\  /\__ _ _ ____   _____  ___| |_ ___ _ __  *
* | __| '_ \ / _ \  / /_/ / _` + "`" + ` | '__\ \ / / _ \/ __| __/ _ \ '__| *
* | |_| | | |  __/ / __  / (_| | |   \ V /  __/\__ \ ||  __/ |    *
*  \__|_| |_|\___| \/ /_/ \__,_|_|    \_/ \___||___/\__\___|_|    *
*                                                                 *
* theHarvester 4.4.0                                              *
*******************************************************************`

func harvesterOutput(req Request, rng *rand.Rand, _ time.Time) string {
	domain := req.Param("target", "example.com")
	return fmt.Sprintf(`%[1]s

[*] Target: %[2]s
[*] Searching: Google, Bing, LinkedIn

[*] Emails found: %[3]d
------------------
admin@%[2]s
info@%[2]s
support@%[2]s

[*] Hosts found: %[4]d
------------------
mail.%[2]s
www.%[2]s
api.%[2]s`, harvesterBanner, domain, between(rng, 3, 10), between(rng, 2, 5))
}

func defaultOutput(req Request) string {
	params := req.Params
	if params == nil {
		params = map[string]string{}
	}
	encoded, err := json.MarshalIndent(params, "", "  ")
	if err != nil {
		encoded = []byte("{}")
	}
	return fmt.Sprintf(`[*] Executing %s...
[*] Parameters: %s
[+] Tool execution completed successfully
[*] Analysis complete - check results above`, req.ToolID, encoded)
}
