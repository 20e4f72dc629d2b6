package deps

import (
	"context"
	"fmt"
	"registrar/internal/config"
	dl "registrar/internal/core/domain/logging"
	"registrar/internal/core/domain/mail"
	drl "registrar/internal/core/domain/rate_limiter"
	"registrar/internal/core/domain/signup"
	duow "registrar/internal/core/domain/unit_of_work"
	"registrar/internal/core/domain/user"
	"registrar/internal/core/services/captcha"
	dbsignup "registrar/internal/db/signup"
	uow "registrar/internal/db/unit_of_work"
	dbuser "registrar/internal/db/user"
	"registrar/internal/implementations/email"
	keygenerator "registrar/internal/implementations/key_generator"
	"registrar/internal/implementations/logging"
	"registrar/internal/implementations/outbox"
	passwordhasher "registrar/internal/implementations/password_hasher"
	ratelimiter "registrar/internal/implementations/rate_limiter"
	recaptcha "registrar/internal/implementations/recaptcha"
	"registrar/internal/implementations/templates"
	"registrar/internal/rabbitmq"
	outgoingmail "registrar/internal/rabbitmq/publishers/outgoing_mail"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v9"
	"github.com/jackc/pgx/v4/pgxpool"
)

type Deps struct {
	Config    *config.Config
	AwsConfig aws.Config
	Logger    dl.Logger

	DB       *pgxpool.Pool
	Redis    *redis.Client
	Rabbitmq *rabbitmq.Connection

	Now func() time.Time

	UnitOfWork       duow.UnitOfWork
	UserRepository   user.UserRepository
	SignupRepository signup.Repository

	RateLimiter drl.RateLimiter

	SignupSettings   signup.Settings
	PasswordHasher   user.PasswordHasher
	KeyGenerator     signup.KeyGenerator
	CaptchaValidator captcha.CaptchaValidator

	MailTransport  mail.Transport
	MailOutbox     mail.Outbox
	MailDispatcher *email.Dispatcher
	Notifier       signup.Notifier
}

func InitDeps() (*Deps, func()) {
	deps := &Deps{}

	deps.initConfig()
	deps.initAwsConfig()

	closeLogger := deps.initLogger()
	closePgxPool := deps.initPgxPool()
	closeRedisClient := deps.initRedisClient()
	closeRabbitmqConn := deps.initRabbitmqConnection()

	deps.UnitOfWork = uow.NewPgxUnitOfWork(deps.DB)
	deps.UserRepository = dbuser.NewPgxRepository(deps.DB)
	deps.SignupRepository = dbsignup.NewPgxSignupRepository(deps.DB)

	deps.Now = func() time.Time { return time.Now().UTC() }
	deps.RateLimiter = ratelimiter.NewRedis(deps.Redis, deps.Logger, deps.Now)
	deps.SignupSettings = signup.Settings{
		ActivationDays:       deps.Config.ActivationDays,
		ActivatedMarker:      signup.ActivationKey(deps.Config.ActivatedMarker),
		ActivationNotify:     deps.Config.ActivationNotify,
		ActivationNotifyDays: deps.Config.ActivationNotifyDays,
	}
	deps.PasswordHasher = passwordhasher.NewBcrypt(deps.Config.Secret, deps.Config.BcryptHasherCost)
	deps.KeyGenerator = keygenerator.NewSHA1()
	deps.CaptchaValidator = deps.initCaptchaValidator()

	deps.MailTransport = email.NewSES(deps.AwsConfig, deps.Config.AwsEmailSender)
	closeMailOutbox := deps.initMailOutbox()
	deps.initMailDispatcher()
	deps.Notifier = email.NewSender(deps.MailDispatcher, deps.SignupSettings, deps.Now)

	flushSentry := deps.initSentry()

	return deps, func() {
		closeFuncs := []func(){
			closeMailOutbox,
			closeRabbitmqConn,
			closeRedisClient,
			closePgxPool,
			closeLogger,
			flushSentry,
		}

		var wg sync.WaitGroup
		wg.Add(len(closeFuncs))
		for _, closeFunc := range closeFuncs {
			closeFunc := closeFunc
			go func() {
				closeFunc()
				wg.Done()
			}()
		}

		wg.Wait()
	}
}

func (deps *Deps) initConfig() {
	config, err := config.Load()
	if err != nil {
		panic(err)
	}
	deps.Config = config
}

func (deps *Deps) initAwsConfig() {
	cfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithRegion(deps.Config.AwsRegion),
		awsConfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				deps.Config.AwsAccessKey,
				deps.Config.AwsSecretKey,
				"",
			),
		),
		awsConfig.WithRetryer(func() aws.Retryer {
			return retry.AddWithMaxAttempts(
				retry.AddWithMaxBackoffDelay(retry.NewStandard(), time.Second*5),
				3,
			)
		}),
	)
	if err != nil {
		panic(err)
	}
	deps.AwsConfig = cfg
}

func (deps *Deps) initLogger() func() {
	logger := logging.NewZapLogger(deps.Config.IsTestMode)
	deps.Logger = logger
	return func() { logger.Sync() }
}

func (deps *Deps) initPgxPool() func() {
	db, err := pgxpool.Connect(context.Background(), deps.Config.PostgresqlURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to DB.", dl.Entry("err", err))
		panic(err)
	}
	deps.DB = db
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down DB connection.")
		db.Close()
		deps.Logger.Info(context.Background(), "DB connection shut down.")
	}
}

func (deps *Deps) initRedisClient() func() {
	redisOpt, err := redis.ParseURL(deps.Config.RedisURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to Redis.", dl.Entry("err", err))
		panic(err)
	}
	redisClient := redis.NewClient(redisOpt)
	deps.Redis = redisClient
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down Redis client.")
		redisClient.Close()
		deps.Logger.Info(context.Background(), "Redis client shut down.")
	}
}

func (deps *Deps) initRabbitmqConnection() func() {
	if deps.Config.MailOutbox != config.OutboxAMQP {
		deps.Logger.Info(context.Background(), "RabbitMQ is disabled.", dl.Entry("outbox", deps.Config.MailOutbox))
		return func() {}
	}
	rabbitmqConnection, err := rabbitmq.Dial(deps.Config.RabbitmqURL, deps.Logger)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to RabbitMQ.", dl.Entry("err", err))
		panic("could not connect to RabbitMQ")
	}
	deps.Rabbitmq = rabbitmqConnection
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down RabbitMQ connection.")
		rabbitmqConnection.Close()
		deps.Logger.Info(context.Background(), "RabbitMQ connection shut down.")
	}
}

func (deps *Deps) initMailOutbox() func() {
	switch deps.Config.MailOutbox {
	case config.OutboxSES:
		deps.MailOutbox = outbox.NewDirect(deps.MailTransport)
		return func() {}
	case config.OutboxLocal:
		deps.MailOutbox = outbox.NewLocal(deps.Logger)
		return func() {}
	}

	queue := deps.Config.RabbitmqOutgoingMailQueue
	rabbitmqChannel, err := deps.Rabbitmq.DurableQueue(queue)
	if err != nil {
		deps.Logger.Error(
			context.Background(),
			"Could not declare RabbitMQ queue.",
			dl.Entry("err", err),
			dl.Entry("queue", queue),
		)
		panic(err)
	}
	deps.MailOutbox = outgoingmail.NewRabbitMQ(deps.Logger, rabbitmqChannel, queue)

	return func() {
		deps.Logger.Info(context.Background(), "Shutting down mail outbox.")
		rabbitmqChannel.Close()
		deps.Logger.Info(context.Background(), "Mail outbox shut down.")
	}
}

func (deps *Deps) initMailDispatcher() {
	renderer, err := templates.New()
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not compile email templates.", dl.Entry("err", err))
		panic(err)
	}
	deps.MailDispatcher = email.NewDispatcher(
		deps.Logger,
		renderer,
		deps.MailOutbox,
		email.Config{
			From:             deps.Config.AwsEmailSender,
			Site:             mail.Site{Domain: deps.Config.SiteDomain, Name: deps.Config.SiteName},
			UseHTTPS:         deps.Config.UseHTTPS,
			HTMLEmail:        deps.Config.HTMLEmail,
			UsePlainTemplate: deps.Config.UsePlainTemplate,
			WithoutUsernames: deps.Config.WithoutUsernames,
		},
	)
}

func (deps *Deps) initCaptchaValidator() captcha.CaptchaValidator {
	if deps.Config.IsTestMode {
		return captcha.NewAllowAlwaysCaptchaValidator()
	}
	return recaptcha.New(
		deps.Logger,
		deps.Config.GoogleRecaptchaSecretKey,
		deps.Config.GoogleRecaptchaScoreThreshold,
		deps.Config.GoogleRecaptchaRequestTimeout,
	)
}

func (deps *Deps) initSentry() func() {
	if deps.Config.SentryDsn != nil {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              deps.Config.SentryDsn.String(),
			TracesSampleRate: 0.01,
		})
		if err != nil {
			panic(fmt.Sprintf("could not init Sentry: %v\n", err))
		}
		deps.Logger.Info(context.Background(), "Sentry has been successfully initialized.")
		return func() {
			ok := sentry.Flush(5 * time.Second)
			deps.Logger.Info(context.Background(), "Sentry events flushed.", dl.Entry("ok", ok))
		}
	}

	deps.Logger.Info(context.Background(), "Sentry is disabled.")
	return func() {}
}
