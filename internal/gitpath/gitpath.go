// Package gitpath contains consts and methods to work with path inside
// the .gitlet directory
package gitpath

// .gitlet/ Files and directories
// Paths are relative to the .gitlet directory and use the UNIX
// separator. The config package converts them for the current system
const (
	DotGitletPath      = ".gitlet"
	ConfigPath         = "config"
	HEADPath           = "HEAD"
	ObjectsPath        = "objects"
	RefsPath           = "refs"
	RefsHeadsPath      = RefsPath + "/heads"
	StagePath          = "stage"
	StageAdditionsPath = StagePath + "/add_stage"
	StageRemovalsPath  = StagePath + "/remove_stage"
)

// GlobalConfigName is the name of the user's config file, located in
// $HOME
const GlobalConfigName = ".gitletconfig"
