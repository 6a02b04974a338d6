package cmd

var (
	workDir      string
	debugMode    bool
	snapshotName string

	showAllConfigs bool

	serveTransport string
	servePort      int
	watchMode      bool

	checkEntry string
	checkJSON  bool
)
