package textview

import "github.com/tliron/commonlog"

var log = commonlog.GetLogger("textkit.textview")
