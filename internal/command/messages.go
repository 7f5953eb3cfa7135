package command

// Verbs understood by the dispatcher.
const (
	VerbHelp     = "/help"
	VerbLookup   = "/lookup"
	VerbGetSub   = "/getsub"
	VerbIPLookup = "/iplookup"
)

const helpMessage = `<b>Available Commands:</b><br><br>
<b>/help</b> - Show this list of commands<br>
<b>/lookup [url]</b> - Get details of your target (URL, domains, IPs supported)<br>
<b>/getsub [domain]</b> - Get subdomains of a domain or full URL<br>
<b>/iplookup [ip]</b> - Get details of a given IP address<br>
<i>Usage:</i> /lookup https://example.com, /getsub example.com or /getsub https://example.com, /iplookup 8.8.8.8`

const (
	msgLookupUsage   = "/lookup [url] - Please provide a URL to lookup."
	msgGetSubUsage   = "/getsub [domain] - Please provide a domain or URL to lookup."
	msgIPLookupUsage = "/iplookup [ip] - Please provide an IP address to lookup."
	msgInvalidURL    = "Invalid URL format"
	msgNoSubdomains  = "No subdomains found."
	msgUnknown       = "⚠️ Command not recognized. Type /help for available commands."
)

const lookupTemplate = `🧑‍💻 Full Lookup Details for: %s <br><br>
<b>Protocol:</b> %s <br>
<b>Host:</b> %s <br>
<b>Path:</b> %s <br>
<b>Search Params:</b> %s <br>
<b>IP Address:</b> %s <br>
<b>Location:</b> %s, %s, %s <br>
<b>DNS Records:</b> <br>
<b>A Records:</b> %s <br>
<b>AAAA Records:</b> %s <br>
<b>MX Records:</b> %s <br>`

const ipLookupTemplate = `🧑‍💻 IP Lookup for: %s <br><br>
<b>Hostname:</b> %s <br>
<b>City:</b> %s <br>
<b>Region:</b> %s <br>
<b>Country:</b> %s <br>
<b>Latitude & Longitude:</b> %s <br>
<b>Timezone:</b> %s <br>
<b>Postal Code:</b> %s <br>
<b>Organization:</b> %s <br>
<b>Network:</b> %s <br>`
