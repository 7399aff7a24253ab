package main

import (
	"embed"
	"flag"
	"fmt"
	"io/fs"
	"net/http"
	"path/filepath"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	"userportal/handler"
	"userportal/router"
	"userportal/store"
	"userportal/store/jsondb"
	"userportal/store/mysqldb"
	"userportal/util"
)

var (
	// command-line banner information
	appVersion = "development"
	// configuration variables
	flagBindAddress   string = util.DefaultBindAddress
	flagSessionSecret string = util.DefaultSessionSecret
	flagDBType        string = util.DefaultDBType
	flagDBPath        string = util.DefaultDBPath
	flagDBHost        string = util.DefaultDBHost
	flagDBUser        string = util.DefaultDBUser
	flagDBPassword    string
	flagDBName        string = util.DefaultDBName
	flagDBPort        int    = util.DefaultDBPort
	flagDBTLS         bool   = false
	flagUploadDir     string = util.DefaultUploadDir
)

//go:embed templates
var embeddedTemplates embed.FS

func init() {

	// command-line flags and env variables
	flag.StringVar(&flagBindAddress, "bind-address", util.LookupEnvOrString(util.BindAddressEnvVar, flagBindAddress), "Address:Port to which the app will be bound.")
	flag.StringVar(&flagSessionSecret, "session-secret", util.LookupEnvOrString(util.SessionSecretEnvVar, flagSessionSecret), "The key used to sign session cookies.")
	flag.StringVar(&flagDBType, "db-type", util.LookupEnvOrString(util.DBTypeEnvVar, flagDBType), "Storage backend: mysql or jsondb.")
	flag.StringVar(&flagDBPath, "db-path", util.LookupEnvOrString(util.DBPathEnvVar, flagDBPath), "Directory of the jsondb backend.")
	flag.StringVar(&flagDBHost, "db-host", util.LookupEnvOrString(util.DBHostEnvVar, flagDBHost), "MySQL host.")
	flag.StringVar(&flagDBUser, "db-user", util.LookupEnvOrString(util.DBUserEnvVar, flagDBUser), "MySQL user.")
	flag.StringVar(&flagDBPassword, "db-password", util.LookupEnvOrString(util.DBPasswordEnvVar, flagDBPassword), "MySQL password.")
	flag.StringVar(&flagDBName, "db-name", util.LookupEnvOrString(util.DBNameEnvVar, flagDBName), "MySQL database name.")
	flag.IntVar(&flagDBPort, "db-port", util.LookupEnvOrInt(util.DBPortEnvVar, flagDBPort), "MySQL port.")
	flag.BoolVar(&flagDBTLS, "db-tls", util.LookupEnvOrBool(util.DBTLSEnvVar, flagDBTLS), "Use TLS for the MySQL connection.")
	flag.StringVar(&flagUploadDir, "upload-dir", util.LookupEnvOrString(util.UploadDirEnvVar, flagUploadDir), "Directory where uploaded profile images are stored.")
	flag.Parse()

	// update runtime config
	util.BindAddress = flagBindAddress
	util.SessionSecret = []byte(flagSessionSecret)
	util.DBType = flagDBType
	util.DBPath = flagDBPath
	util.DBHost = flagDBHost
	util.DBUser = flagDBUser
	util.DBPassword = flagDBPassword
	util.DBName = flagDBName
	util.DBPort = flagDBPort
	util.DBTLS = flagDBTLS
	util.UploadDir = flagUploadDir

	// print app information
	fmt.Println("User Portal")
	fmt.Println("App Version\t:", appVersion)
	fmt.Println("Bind address\t:", util.BindAddress)
	fmt.Println("Store backend\t:", util.DBType)
	fmt.Println("Upload dir\t:", util.UploadDir)
}

func initStore() (store.IStore, error) {
	if util.DBType == "mysql" {
		return mysqldb.New(util.DBUser, util.DBPassword, util.DBHost, util.DBPort, util.DBName, util.DBTLS)
	}
	return jsondb.New(util.DBPath)
}

func main() {
	db, err := initStore()
	if err != nil {
		log.Fatal("Cannot open the store: ", err)
	}
	if err := db.Init(); err != nil {
		log.Fatal("Cannot init the store: ", err)
	}

	// set app extra data
	extraData := make(map[string]string)
	extraData["appVersion"] = appVersion

	tmplDir, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		log.Fatal(err)
	}

	// register routes
	app := router.New(tmplDir, extraData, util.SessionSecret)
	app.Use(handler.ContentSecurityPolicy)

	app.GET("/", handler.HomePage())
	app.GET("/login", handler.LoginPage())
	app.POST("/login", handler.Login(db))
	app.GET("/logout", handler.Logout())

	// every route below requires an authenticated session
	app.GET("/users", handler.UsersPage(db), handler.ValidSession)
	app.GET("/addUser", handler.AddUserPage(), handler.ValidSession)
	app.POST("/addUser", handler.AddUser(db), handler.ValidSession, handler.ProfileUpload(util.UploadDir))
	app.POST("/deleteUser/:id", handler.DeleteUser(db), handler.ValidSession)

	// uploaded images are served read-only under /images
	imageHandler := http.FileServer(http.Dir(filepath.Dir(util.UploadDir)))
	app.GET("/images/*", echo.WrapHandler(http.StripPrefix("/images/", imageHandler)))

	app.Logger.Fatal(app.Start(util.BindAddress))
}
