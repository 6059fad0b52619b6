// Taxonomic name indexer: a batch command-line utility that materializes
// a Darwin Core Archive into a nested-set inverted-index search structure
// plus vernacular and homonym sub-indexes.
//
// Copyright 2018 Mark Wardle / Eldrix Ltd
//
//    Licensed under the Apache License, Version 2.0 (the "License");
//    you may not use this file except in compliance with the License.
//    You may obtain a copy of the License at
//
//        http://www.apache.org/licenses/LICENSE-2.0
//
//    Unless required by applicable law or agreed to in writing, software
//    distributed under the License is distributed on an "AS IS" BASIS,
//    WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//    See the License for the specific language governing permissions and
//    limitations under the License.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gnames/taxindexer/internal/driver"
	"github.com/gnames/taxindexer/pkg/logger"
)

// automatically populated by linker flags
var version string
var build string

var doAll = flag.Bool("all", false, "build loading and search indexes")
var doLoad = flag.Bool("load", false, "build loading index only")
var doSearch = flag.Bool("search", false, "build search index only (requires existing loading index)")

var dwcaDir = flag.String("dwca", "", "source DwCA directory")
var irmngDir = flag.String("irmng", "", "IRMNG DwCA directory, enables homonym index")
var commonPath = flag.String("common", "", "vernacular name CSV, enables vernacular sub-index")

var targetDir = flag.String("target", "", "output directory")
var tmpDir = flag.String("tmp", "", "loading index directory")

var testSearch = flag.String("testSearch", "", "query the built index and print results")
var logLevel = flag.String("loglevel", "info", "log level: debug, info, warn, error")
var doVersion = flag.Bool("v", false, "print build/version info, exit")

func main() {
	flag.Usage = usage
	flag.Parse()

	if *doVersion {
		fmt.Printf("taxindexer %s (%s)\n", version, build)
		return
	}

	log := logger.New(*logLevel)

	if *tmpDir == "" {
		*tmpDir = "./tmp-load-index"
	}
	if *targetDir == "" {
		*targetDir = "./target"
	}

	cfg := driver.Config{
		DwCADir:        *dwcaDir,
		IRMNGDir:       *irmngDir,
		VernacularPath: *commonPath,
		TargetDir:      *targetDir,
		TmpDir:         *tmpDir,
		DoAll:          *doAll,
		DoLoad:         *doLoad,
		DoSearch:       *doSearch,
		TestSearchName: *testSearch,
		Log:            log,
	}

	if err := driver.Run(cfg); err != nil {
		log.Error("build failed", "error", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "taxindexer builds a taxonomic name search index from a Darwin Core Archive")
	fmt.Fprintln(os.Stderr, "\nUsage:")
	flag.PrintDefaults()
}
