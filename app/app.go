/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package app

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/atalk/xmppcore/event"
	"github.com/atalk/xmppcore/framework"
	"github.com/atalk/xmppcore/history"
	measuredhistory "github.com/atalk/xmppcore/history/measured"
	memoryhistory "github.com/atalk/xmppcore/history/memory"
	sqlhistory "github.com/atalk/xmppcore/history/sql"
	"github.com/atalk/xmppcore/log"
	"github.com/atalk/xmppcore/module"
	"github.com/atalk/xmppcore/module/xep0092"
	"github.com/atalk/xmppcore/module/xep0166"
	"github.com/atalk/xmppcore/module/xep0199"
	"github.com/atalk/xmppcore/provider"
	"github.com/atalk/xmppcore/stream"
	"github.com/atalk/xmppcore/version"
	"github.com/atalk/xmppcore/xep/colibri"
	"github.com/atalk/xmppcore/xep/jingle"
	"github.com/atalk/xmppcore/xep/rayo"
	"github.com/atalk/xmppcore/xmpp"
	"github.com/atalk/xmppcore/xmpp/jid"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	defaultShutDownWaitTime = time.Duration(5) * time.Second

	callHistoryBundle = "call_history"
)

const usageStr = `
Usage: xmppcored [options]

Server Options:
    -c, --config <file>    Configuration file path
Common Options:
    -h, --help             Show this message
    -v, --version          Show version
`

// Application encapsulates a xmppcore application.
type Application struct {
	output           io.Writer
	input            io.Reader
	args             []string
	d                *event.Dispatcher
	container        *framework.Container
	providers        *provider.Manager
	stm              *stream.Writer
	mods             *module.Modules
	jingle           *xep0166.Jingle
	maxStanzaSize    int
	waitStopCh       chan os.Signal
	shutDownWaitSecs time.Duration
}

// New returns a runnable application given an output, an input stream and a command line arguments array.
func New(output io.Writer, input io.Reader, args []string) *Application {
	return &Application{
		output:           output,
		input:            input,
		args:             args,
		waitStopCh:       make(chan os.Signal, 1),
		shutDownWaitSecs: defaultShutDownWaitTime,
	}
}

// Run runs the application until either the input stream ends, a stop signal is received or an error occurs.
func (a *Application) Run() error {
	if len(a.args) == 0 {
		return errors.New("empty command-line arguments")
	}
	var configFile string
	var showVersion, showUsage bool

	fs := flag.NewFlagSet(version.ApplicationName, flag.ExitOnError)
	fs.SetOutput(a.output)

	fs.BoolVar(&showUsage, "help", false, "Show this message")
	fs.BoolVar(&showUsage, "h", false, "Show this message")
	fs.BoolVar(&showVersion, "version", false, "Print version information.")
	fs.BoolVar(&showVersion, "v", false, "Print version information.")
	fs.StringVar(&configFile, "config", "/etc/xmppcore/xmppcore.yml", "Configuration file path.")
	fs.StringVar(&configFile, "c", "/etc/xmppcore/xmppcore.yml", "Configuration file path.")
	fs.Usage = func() {
		_, _ = fmt.Fprintf(a.output, "%s\n", usageStr)
	}
	_ = fs.Parse(a.args[1:])

	// print usage
	if showUsage {
		fs.Usage()
		return nil
	}
	// print version
	if showVersion {
		a.showVersion()
		return nil
	}
	// load configuration
	var cfg Config
	if err := cfg.FromFile(configFile); err != nil {
		return err
	}
	// initialize logger
	if err := log.Initialize(&cfg.Logger); err != nil {
		return err
	}
	defer log.Shutdown()

	log.Infof("%s %v", version.ApplicationName, version.ApplicationVersion)

	if err := a.bootstrap(&cfg); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), a.shutDownWaitSecs)
	err := a.container.StartAll(ctx)
	cancel()
	if err != nil {
		_ = a.gracefullyShutdown()
		return err
	}

	// start reading incoming stanzas...
	readDoneCh := make(chan error, 1)
	go func() { readDoneCh <- a.readLoop() }()

	// ...wait for stop signal or end of stream to shutdown
	select {
	case sig := <-a.waitForStopSignal():
		log.Infof("received %s signal... shutting down...", sig.String())
	case err := <-readDoneCh:
		if err != nil {
			log.Errorf("stream read failed: %v", err)
		}
		log.Infof("input stream closed... shutting down...")
	}
	return a.gracefullyShutdown()
}

func (a *Application) showVersion() {
	_, _ = fmt.Fprintf(a.output, "%s version: %v\n", version.ApplicationName, version.ApplicationVersion)
}

func (a *Application) bootstrap(cfg *Config) error {
	localJID, err := cfg.LocalJID()
	if err != nil {
		return err
	}
	a.maxStanzaSize = cfg.Stream.MaxStanzaSize

	a.d = event.NewDispatcher(cfg.Dispatcher.Name)
	a.container = framework.New(a.d)

	// extension providers
	a.providers = provider.NewManager()
	jingle.Register(a.providers)
	rayo.Register(a.providers)
	colibri.Register(a.providers)

	// call history
	rep := measuredhistory.New(newHistoryRepository(&cfg.History))

	// stream & modules
	a.stm = stream.NewWriter(uuid.New().String(), localJID, a.output)
	rc := module.NewResponseCollector(a.stm, cfg.Modules.IQTimeout)
	a.mods = module.New(a.buildModules(&cfg.Modules, rep, rc), a.stm, rc)

	if _, err := a.container.Install("history", rep); err != nil {
		return err
	}
	// installed after the repository so it is stopped first
	if _, err := a.container.Install(callHistoryBundle, history.NewRecorder(callHistoryBundle, a.d, rep)); err != nil {
		return err
	}
	if _, err := a.container.Install("modules", a.mods); err != nil {
		return err
	}
	if cfg.Debug.Port > 0 {
		if _, err := a.container.Install("debug", newDebugServer(cfg.Debug.Port)); err != nil {
			return err
		}
	}
	if err := a.container.Register("providers", a.providers); err != nil {
		return err
	}
	if err := a.container.Register("history", rep); err != nil {
		return err
	}
	if a.jingle != nil {
		return a.container.Register(xep0166.ModuleName, a.jingle)
	}
	return nil
}

func (a *Application) buildModules(cfg *module.Config, rep history.Repository, rc *module.ResponseCollector) []module.Module {
	var mods []module.Module
	if cfg.IsEnabled(xep0092.ModuleName) {
		mods = append(mods, xep0092.New(cfg.Version, a.stm))
	}
	if cfg.IsEnabled(xep0199.ModuleName) {
		mods = append(mods, xep0199.New(cfg.Ping, a.stm, rc))
	}
	if cfg.IsEnabled(xep0166.ModuleName) {
		a.jingle = xep0166.New(cfg.Jingle, a.stm, rc, a.d, rep)
		mods = append(mods, a.jingle)
	}
	return mods
}

func (a *Application) readLoop() error {
	p := xmpp.NewParser(a.input, xmpp.SocketStream, a.maxStanzaSize)
	for {
		elem, err := p.ParseElement()
		switch {
		case err == io.EOF || err == xmpp.ErrStreamClosedByPeer:
			return nil
		case err != nil:
			return err
		case elem == nil:
			continue
		}
		a.processElement(elem)
	}
}

func (a *Application) processElement(elem xmpp.XElement) {
	switch elem.Name() {
	case xmpp.IQName:
		a.processIQ(elem)
	case xmpp.PresenceName:
		a.processPresence(elem)
	case xmpp.MessageName:
		a.processMessage(elem)
	default:
		log.Debugf("ignoring element: <%s/>", elem.Name())
	}
}

func (a *Application) processIQ(elem xmpp.XElement) {
	iq, err := a.providers.ParseIQ(elem)
	if err != nil {
		log.Warnf("failed to parse iq %s: %v", elem.ID(), err)
		a.replyBadRequest(elem)
		return
	}
	if err := a.mods.ProcessIQ(context.Background(), iq); err != nil {
		log.Error(err)
	}
}

// processPresence turns a Rayo <end/> presence into a call event.
func (a *Application) processPresence(elem xmpp.XElement) {
	from, to := stanzaAddresses(elem)
	presence, err := xmpp.NewPresenceFromElement(elem, from, to)
	if err != nil {
		log.Warnf("failed to parse presence: %v", err)
		return
	}
	endEl := presence.Elements().ChildNamespace("end", rayo.Namespace)
	if endEl == nil {
		return
	}
	ext, err := a.providers.ParseExtension(endEl)
	if err != nil {
		log.Warnf("failed to parse rayo end: %v", err)
		return
	}
	end, ok := ext.(*rayo.End)
	if !ok || presence.FromJID() == nil {
		return
	}
	_ = a.d.Dispatch(event.CallClass, &event.CallEvent{
		SID:    presence.FromJID().Node(),
		Action: event.EndAction,
		Peer:   presence.FromJID(),
		State:  string(history.Ended),
		Reason: string(end.Reason),
	})
}

func (a *Application) processMessage(elem xmpp.XElement) {
	from, to := stanzaAddresses(elem)
	msg, err := xmpp.NewMessageFromElement(elem, from, to)
	if err != nil {
		log.Warnf("failed to parse message: %v", err)
		return
	}
	log.Debugf("ignoring %s message from %s", msg.Type(), msg.From())
}

// replyBadRequest answers an unparseable request straight from its raw envelope.
// Results and errors are never answered.
func (a *Application) replyBadRequest(elem xmpp.XElement) {
	if len(elem.ID()) == 0 || elem.Type() == xmpp.ResultType || elem.Type() == xmpp.ErrorType {
		return
	}
	reply := xmpp.NewElementName(xmpp.IQName).
		SetID(elem.ID()).
		SetType(xmpp.ErrorType).
		SetFrom(elem.To()).
		SetTo(elem.From()).
		AppendElement(xmpp.ErrBadRequest.Element())
	a.stm.SendElement(reply)
}

// stanzaAddresses parses 'from' and 'to' attributes, leaving nil the ones that are missing or malformed.
func stanzaAddresses(elem xmpp.XElement) (from, to *jid.JID) {
	if len(elem.From()) > 0 {
		from, _ = jid.NewWithString(elem.From(), false)
	}
	if len(elem.To()) > 0 {
		to, _ = jid.NewWithString(elem.To(), false)
	}
	return from, to
}

func (a *Application) waitForStopSignal() <-chan os.Signal {
	signal.Notify(a.waitStopCh, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM)
	return a.waitStopCh
}

func (a *Application) gracefullyShutdown() error {
	// wait until application has been shut down
	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(a.shutDownWaitSecs))
	defer cancel()

	select {
	case err := <-a.shutdown(ctx):
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (a *Application) shutdown(ctx context.Context) <-chan error {
	c := make(chan error, 1)
	go func() {
		err := a.container.StopAll(ctx)
		if dErr := a.d.Shutdown(ctx); dErr != nil && err == nil {
			err = dErr
		}
		a.stm.Disconnect(nil)
		c <- err
	}()
	return c
}

func newHistoryRepository(cfg *history.Config) history.Repository {
	if cfg.Type == history.SQL {
		return sqlhistory.New(cfg.SQL)
	}
	return memoryhistory.New()
}

type debugServer struct {
	port int
	srv  *http.Server
}

func newDebugServer(port int) *debugServer {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	return &debugServer{port: port, srv: &http.Server{Handler: mux}}
}

func (s *debugServer) Start(_ context.Context) error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", s.port))
	if err != nil {
		return err
	}
	go func() { _ = s.srv.Serve(ln) }()
	log.Infof("debug server listening at %d...", s.port)
	return nil
}

func (s *debugServer) Stop(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
