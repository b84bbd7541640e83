package name

// reservedList is the compile-time reserved-name list: ~500 names
// rejected as unavailable regardless of quota, mirroring the original
// release artifact's bundled reserved-name set.
var reservedList = []string{
	"aave",
	"about",
	"academy",
	"account",
	"admin",
	"adobe",
	"adobe2",
	"adobe3",
	"adobe4",
	"afternoon",
	"ai",
	"air",
	"airbnb",
	"airbnb2",
	"airbnb3",
	"airline",
	"akamai",
	"akamai2",
	"akamai3",
	"alibaba",
	"alibaba2",
	"alibaba3",
	"amazon",
	"amazon2",
	"amazon3",
	"amazon4",
	"amd",
	"amd2",
	"amd3",
	"ancient",
	"api",
	"app",
	"apple",
	"apple2",
	"apple3",
	"apple4",
	"apps",
	"art",
	"ash",
	"auto",
	"autumn",
	"avalanche",
	"aws",
	"aws2",
	"aws3",
	"azure",
	"azure2",
	"azure3",
	"baidu",
	"baidu2",
	"baidu3",
	"bank",
	"bar",
	"baseball",
	"basketball",
	"beauty",
	"best",
	"bet",
	"betting",
	"big",
	"bike",
	"billing",
	"binance",
	"binance2",
	"binance3",
	"bitbucket",
	"bitbucket2",
	"bitbucket3",
	"bitcoin",
	"bitfinex",
	"bitstamp",
	"bittrex",
	"blog",
	"bronze",
	"browser",
	"bus",
	"bybit",
	"cafe",
	"camera",
	"camp",
	"car",
	"cardano",
	"casino",
	"cdn",
	"central",
	"chainlink",
	"charity",
	"chess",
	"climb",
	"cloud",
	"cloudflare",
	"cloudflare2",
	"cloudflare3",
	"club",
	"co",
	"coin",
	"coinbase",
	"coinbase2",
	"coinbase3",
	"college",
	"com",
	"compound",
	"contact",
	"copper",
	"crypto",
	"crystal",
	"curve",
	"dao",
	"dashboard",
	"date",
	"dawn",
	"day",
	"default",
	"defi",
	"demo",
	"design",
	"dev",
	"dew",
	"diamond",
	"discord",
	"discord2",
	"discord3",
	"dive",
	"dns",
	"docker",
	"docker2",
	"docker3",
	"dogecoin",
	"drink",
	"drizzle",
	"dusk",
	"dust",
	"earth",
	"east",
	"ebay",
	"ebay2",
	"ebay3",
	"edu",
	"elite",
	"emerald",
	"esports",
	"ethereum",
	"evening",
	"example",
	"exchange",
	"facebook",
	"facebook2",
	"facebook3",
	"facebook4",
	"fall",
	"fashion",
	"fastly",
	"fastly2",
	"fastly3",
	"film",
	"finance",
	"fire",
	"first",
	"fitness",
	"flight",
	"fog",
	"food",
	"football",
	"forum",
	"foundation",
	"free",
	"frost",
	"ftp",
	"ftx",
	"future",
	"galaxy",
	"game",
	"gaming",
	"gate",
	"gcp",
	"gcp2",
	"gcp3",
	"gemini",
	"giant",
	"github",
	"github2",
	"github3",
	"gitlab",
	"gitlab2",
	"gitlab3",
	"glass",
	"global",
	"gold",
	"golf",
	"google",
	"google2",
	"google3",
	"google4",
	"gov",
	"government",
	"gym",
	"hail",
	"health",
	"help",
	"hike",
	"home",
	"hotel",
	"hour",
	"house",
	"huawei",
	"huawei2",
	"huawei3",
	"huge",
	"huobi",
	"hyper",
	"ibm",
	"ibm2",
	"ibm3",
	"ice",
	"imap",
	"info",
	"instagram",
	"instagram2",
	"instagram3",
	"instagram4",
	"institute",
	"intel",
	"intel2",
	"intel3",
	"international",
	"invest",
	"io",
	"iron",
	"kraken",
	"kraken2",
	"kraken3",
	"kubernetes",
	"kubernetes2",
	"kubernetes3",
	"kucoin",
	"large",
	"last",
	"legal",
	"lg",
	"lg2",
	"lg3",
	"library",
	"lightning",
	"linkedin",
	"linkedin2",
	"linkedin3",
	"litecoin",
	"local",
	"login",
	"logout",
	"lottery",
	"lyft",
	"lyft2",
	"lyft3",
	"mail",
	"makerdao",
	"map",
	"maps",
	"market",
	"master",
	"mastercard",
	"mastercard2",
	"mastercard3",
	"mastercard4",
	"max",
	"mega",
	"metal",
	"metaverse",
	"micro",
	"microsoft",
	"microsoft2",
	"microsoft3",
	"microsoft4",
	"midnight",
	"mil",
	"mini",
	"minute",
	"mist",
	"mobile",
	"modern",
	"month",
	"moon",
	"morning",
	"moto",
	"movie",
	"museum",
	"music",
	"nano",
	"national",
	"net",
	"netflix",
	"netflix2",
	"netflix3",
	"netflix4",
	"new",
	"news",
	"nft",
	"ngo",
	"night",
	"none",
	"noon",
	"north",
	"now",
	"npm",
	"npm2",
	"npm3",
	"ns1",
	"ns2",
	"null",
	"nvidia",
	"nvidia2",
	"nvidia3",
	"okx",
	"okx2",
	"okx3",
	"old",
	"oracle",
	"oracle2",
	"oracle3",
	"oracle4",
	"org",
	"pancakeswap",
	"park",
	"past",
	"payment",
	"paypal",
	"paypal2",
	"paypal3",
	"paypal4",
	"pearl",
	"photo",
	"pinterest",
	"pinterest2",
	"pinterest3",
	"place",
	"planet",
	"platinum",
	"plus",
	"podcast",
	"poker",
	"polkadot",
	"poloniex",
	"polygon",
	"pop",
	"premium",
	"present",
	"privacy",
	"pro",
	"profile",
	"pub",
	"radio",
	"rain",
	"reddit",
	"reddit2",
	"reddit3",
	"regional",
	"register",
	"restaurant",
	"ripple",
	"rock",
	"root",
	"ruby",
	"run",
	"salesforce",
	"salesforce2",
	"salesforce3",
	"sample",
	"samsung",
	"samsung2",
	"samsung3",
	"sand",
	"sapphire",
	"school",
	"search",
	"second",
	"security",
	"settings",
	"shop",
	"shower",
	"signal",
	"signal2",
	"signal3",
	"signin",
	"signout",
	"signup",
	"silver",
	"ski",
	"sky",
	"small",
	"smoke",
	"smtp",
	"snow",
	"soccer",
	"solana",
	"sony",
	"sony2",
	"sony3",
	"south",
	"space",
	"spacex",
	"spacex2",
	"spacex3",
	"sport",
	"sports",
	"spring",
	"square",
	"square2",
	"square3",
	"star",
	"status",
	"steel",
	"stone",
	"store",
	"storm",
	"stripe",
	"stripe2",
	"stripe3",
	"summer",
	"sun",
	"super",
	"support",
	"surf",
	"sushiswap",
	"swim",
	"system",
	"taxi",
	"telegram",
	"telegram2",
	"telegram3",
	"tencent",
	"tencent2",
	"tencent3",
	"tennis",
	"terms",
	"tesla",
	"tesla2",
	"tesla3",
	"test",
	"thunder",
	"tiktok",
	"tiktok2",
	"tiktok3",
	"tiktok4",
	"time",
	"tiny",
	"today",
	"token",
	"tomorrow",
	"top",
	"trading",
	"traffic",
	"train",
	"travel",
	"tv",
	"twitter",
	"twitter2",
	"twitter3",
	"twitter4",
	"uber",
	"uber2",
	"uber3",
	"ultra",
	"uniswap",
	"universe",
	"university",
	"video",
	"vip",
	"visa",
	"visa2",
	"visa3",
	"visa4",
	"wallet",
	"water",
	"weather",
	"web3",
	"wechat",
	"wechat2",
	"wechat3",
	"week",
	"west",
	"whatsapp",
	"whatsapp2",
	"whatsapp3",
	"wind",
	"winter",
	"wood",
	"world",
	"www",
	"xiaomi",
	"xiaomi2",
	"xiaomi3",
	"year",
	"yesterday",
	"yoga",
	"young",
	"youtube",
	"youtube2",
	"youtube3",
	"youtube4",
	"zoo",
}
